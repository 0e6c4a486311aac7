package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.Count() != 2 {
		t.Errorf("Count: got %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 值类型和指针类型是不同的组件类型
	if _, ok := GetComponent[testPositionComponent](em, id); ok {
		t.Error("value type should not match pointer component")
	}

	// 组件是指针，修改会反映到存储中
	pos.X = 5
	again, _ := GetComponent[*testPositionComponent](em, id)
	if again.X != 5 {
		t.Errorf("expected mutation through pointer, got %f", again.X)
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, EntityID(99), &testPositionComponent{})
	if HasComponent[*testPositionComponent](em, EntityID(99)) {
		t.Error("component should not be attached to a non-existent entity")
	}
	if em.Count() != 0 {
		t.Errorf("no entity should be created implicitly, got %d", em.Count())
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	AddComponent(em, id, &testPositionComponent{})
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}

	em.DestroyEntity(id)
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Marked entity should keep its components until removal")
	}
	em.RemoveMarkedEntities()
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component after entity removal")
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		AddComponent(em, id, &testPositionComponent{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.DestroyEntity(id3) // 重复标记不应重复计数

	// 清理前实体仍存在
	if !em.IsAlive(id1) {
		t.Error("Entity should still exist before cleanup")
	}

	if removed := em.RemoveMarkedEntities(); removed != 2 {
		t.Errorf("RemoveMarkedEntities: got %d, want 2", removed)
	}

	if em.IsAlive(id1) || em.IsAlive(id3) {
		t.Error("destroyed entities should be removed after cleanup")
	}
	if !em.IsAlive(id2) {
		t.Error("id2 should still exist")
	}

	// 第二次清理没有待删除实体
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("second cleanup removed %d entities", removed)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})
	AddComponent(em, id1, &testTagComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if !reflect.DeepEqual(both, []EntityID{id1}) {
		t.Errorf("Position+Velocity: got %v, want [%d]", both, id1)
	}

	all3 := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testTagComponent](em)
	if !reflect.DeepEqual(all3, []EntityID{id1}) {
		t.Errorf("three components: got %v, want [%d]", all3, id1)
	}

	pos := GetEntitiesWith1[*testPositionComponent](em)
	if !reflect.DeepEqual(pos, []EntityID{id1, id2}) {
		t.Errorf("Position: got %v, want [%d %d]", pos, id1, id2)
	}

	none := GetEntitiesWith1[*struct{ Z int }](em)
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil result, got %v", none)
	}
}

// TestGetEntitiesWithSortedOrder 查询结果必须按ID升序，保证系统遍历顺序确定
func TestGetEntitiesWithSortedOrder(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 200; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
	}

	ids := GetEntitiesWith1[*testPositionComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not sorted at %d: %d >= %d", i, ids[i-1], ids[i])
		}
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 100; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	}
}
